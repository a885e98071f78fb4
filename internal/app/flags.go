package app

import "flag"

// Config represents the command-line parameters for the GUI.
type Config struct {
	Circuit  string
	Resume   string
	Scale    int
	TPS      int
	HUDWidth int
	Play     bool
	Turbo    bool
	Dev      bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 2, TPS: 20, HUDWidth: 200}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Circuit, "circuit", c.Circuit, "circuit file to load (.mcl, .txt, .ww)")
	fs.StringVar(&c.Resume, "resume", c.Resume, "resume snapshot JSON to start from")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second while playing")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "status panel width in pixels (0 hides it)")
	fs.BoolVar(&c.Play, "play", c.Play, "start playing immediately")
	fs.BoolVar(&c.Turbo, "turbo", c.Turbo, "start in turbo mode")
	fs.BoolVar(&c.Dev, "dev", c.Dev, "human-readable debug logging")
}
