package aeff

import (
	"os"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Config is the yaml description of one analysis: input files, binning and
// event selection.  Unknown keys are rejected so typos fail loudly.
type Config struct {
	// AnalyzedMC is the analyzed Monte-Carlo file holding the events that
	// survived the analysis chain.
	AnalyzedMC string `yaml:"analyzed_mc"`
	// ThrownMC lists the thrown-simulation files.
	ThrownMC []string `yaml:"thrown_mc"`
	// Runs lists the observation run files used for the on-time tally.
	Runs []string `yaml:"runs,omitempty"`

	// EnergyEdges and ZdEdges give explicit bin edges.  When empty, the
	// standard binnings are generated with EnergyEdgeCount/ZdEdgeCount
	// edges (one more than the number of bins).
	EnergyEdges     []float64 `yaml:"energy_edges,omitempty"`
	ZdEdges         []float64 `yaml:"zd_edges,omitempty"`
	EnergyEdgeCount int       `yaml:"energy_edge_count,omitempty"`
	ZdEdgeCount     int       `yaml:"zd_edge_count,omitempty"`

	UseMCEnergy bool    `yaml:"use_mc_energy,omitempty"`
	ThetaSqCut  float64 `yaml:"theta_sq_cut,omitempty"`
	Alpha       float64 `yaml:"alpha,omitempty"`

	CacheDir string `yaml:"cache_dir,omitempty"`
	Chunks   int    `yaml:"chunks,omitempty"`
}

// LoadConfig reads and validates a yaml analysis configuration.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to open config")
	}
	defer f.Close()

	var cfg Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config")
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.ThetaSqCut == 0 {
		c.ThetaSqCut = DefaultThetaSqCut
	}
	if c.Alpha == 0 {
		c.Alpha = DefaultAlpha
	}
	if c.EnergyEdgeCount == 0 {
		c.EnergyEdgeCount = 9
	}
	if c.ZdEdgeCount == 0 {
		c.ZdEdgeCount = 15
	}
	if c.CacheDir == "" {
		c.CacheDir = "a_eff"
	}
}

// Validate checks the configuration for conditions that would make the
// computation impossible.
func (c *Config) Validate() error {
	if c.AnalyzedMC == "" {
		return zerr.Wrap(ErrBadConfig, "analyzed_mc is required")
	}
	if len(c.ThrownMC) == 0 {
		return zerr.Wrap(ErrBadConfig, "thrown_mc is required")
	}
	if err := c.Energy().Validate(); err != nil {
		return zerr.Wrap(err, "energy binning")
	}
	if err := c.Zd().Validate(); err != nil {
		return zerr.Wrap(err, "zenith binning")
	}
	return nil
}

// Energy returns the configured energy bin edges.
func (c *Config) Energy() BinEdges {
	if len(c.EnergyEdges) > 0 {
		return BinEdges(c.EnergyEdges)
	}
	return EnergyEdges(c.EnergyEdgeCount)
}

// Zd returns the configured zenith-distance bin edges.
func (c *Config) Zd() BinEdges {
	if len(c.ZdEdges) > 0 {
		return BinEdges(c.ZdEdges)
	}
	return ZdEdges(c.ZdEdgeCount)
}

// Mode returns the configured energy mode.
func (c *Config) Mode() EnergyMode {
	if c.UseMCEnergy {
		return TrueEnergy
	}
	return EstimatedEnergy
}
