package config

// config/yaml.go

// DefaultTemplate is both the default template path and the filename of the
// default page.
const DefaultTemplate = "index.html"

// Tag is an extra element merged into a transformed document by the host.
type Tag struct {
	Tag      string            `yaml:"tag"`
	Attrs    map[string]string `yaml:"attrs"`
	Children string            `yaml:"children"`
	InjectTo string            `yaml:"inject_to"`
}

type InjectOptions struct {
	Data          map[string]interface{} `yaml:"data"`
	RenderOptions map[string]interface{} `yaml:"ejs_options"`
	Tags          []Tag                  `yaml:"tags"`
}

// Page describes one HTML output and the template it is rendered from.
type Page struct {
	Filename      string        `yaml:"filename"`
	Template      string        `yaml:"template"`
	Entry         string        `yaml:"entry"`
	InjectOptions InjectOptions `yaml:"inject_options"`
}

type HTMLOptions struct {
	Entry    string        `yaml:"entry"`
	Template string        `yaml:"template"`
	Inject   InjectOptions `yaml:"inject"`
	Pages    []Page        `yaml:"pages"`
	Verbose  bool          `yaml:"verbose"`
}

// BuildConfig is the project file as written by the user, before resolution.
type BuildConfig struct {
	Root   string                 `yaml:"root"`
	Base   string                 `yaml:"base"`
	OutDir string                 `yaml:"out_dir"`
	Mode   string                 `yaml:"mode"`
	EnvDir string                 `yaml:"env_dir"`
	Origin string                 `yaml:"origin"`
	Input  map[string]string      `yaml:"input"`
	Proxy  map[string]string      `yaml:"proxy"`
	Define map[string]interface{} `yaml:"define"`
	HTML   HTMLOptions            `yaml:"html"`
}
