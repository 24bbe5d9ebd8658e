package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Config collects every tunable of the training pipeline. It is constructed
// once in the main and passed down; packages never read configuration from
// globals.
type Config struct {
	// TopK is the size of the recommended part set per work order row.
	TopK int `yaml:"top_k"`
	// Folds is the number of grouped cross-validation folds.
	Folds int `yaml:"folds"`
	// CalibrationFolds is the number of stratified sub-folds used to
	// calibrate presence classifiers.
	CalibrationFolds int `yaml:"calibration_folds"`
	// Seed drives fold shuffling and all per-label sub-seeds.
	Seed int64 `yaml:"seed"`

	// MaxIter caps the coordinate descent passes of a single classifier.
	MaxIter int     `yaml:"max_iter"`
	Cost    float64 `yaml:"cost"`
	Tol     float64 `yaml:"tol"`

	NGramMin int `yaml:"ngram_min"`
	NGramMax int `yaml:"ngram_max"`
	// FeatureSteps are the max-feature settings the sweep tries. Steps not
	// strictly below the full n-gram vocabulary are dropped before the sweep.
	FeatureSteps []int `yaml:"feature_steps"`

	// MinQuantityRows is the smallest number of positive-quantity rows that
	// still trains a quantity classifier; below it the label falls back to a
	// constant predictor.
	MinQuantityRows int `yaml:"min_quantity_rows"`
}

// Default returns the configuration the pipeline was tuned with.
func Default() Config {
	return Config{
		TopK:             5,
		Folds:            5,
		CalibrationFolds: 3,
		Seed:             42,
		MaxIter:          200000,
		Cost:             1,
		Tol:              1e-4,
		NGramMin:         1,
		NGramMax:         3,
		FeatureSteps:     []int{20000},
		MinQuantityRows:  3,
	}
}

// Load reads a YAML file and overlays it on the defaults, so a config file
// only needs to name the fields it changes.
func Load(path string) (Config, error) {
	cfg := Default()
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "error loading config %s", path)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "error parsing config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var (
	errNonPositiveTopK         = errors.New("TopK must be positive")
	errTooFewFolds             = errors.New("Folds must be at least 2")
	errTooFewCalibrationFolds  = errors.New("CalibrationFolds must be at least 2")
	errNonPositiveMaxIter      = errors.New("MaxIter must be positive")
	errNonPositiveCost         = errors.New("Cost must be positive")
	errNonPositiveTol          = errors.New("Tol must be positive")
	errInvalidNGramRange       = errors.New("NGram range must satisfy 1 <= NGramMin <= NGramMax")
	errEmptyFeatureSteps       = errors.New("FeatureSteps must not be empty")
	errNonPositiveFeatureStep  = errors.New("FeatureSteps entries must be positive")
	errNonPositiveQuantityRows = errors.New("MinQuantityRows must be positive")
)

// Validate checks the configuration before a run starts.
func (c Config) Validate() error {
	if c.TopK <= 0 {
		return errNonPositiveTopK
	}
	if c.Folds < 2 {
		return errTooFewFolds
	}
	if c.CalibrationFolds < 2 {
		return errTooFewCalibrationFolds
	}
	if c.MaxIter <= 0 {
		return errNonPositiveMaxIter
	}
	if c.Cost <= 0 {
		return errNonPositiveCost
	}
	if c.Tol <= 0 {
		return errNonPositiveTol
	}
	if c.NGramMin < 1 || c.NGramMax < c.NGramMin {
		return errInvalidNGramRange
	}
	if len(c.FeatureSteps) == 0 {
		return errEmptyFeatureSteps
	}
	for _, s := range c.FeatureSteps {
		if s <= 0 {
			return errNonPositiveFeatureStep
		}
	}
	if c.MinQuantityRows <= 0 {
		return errNonPositiveQuantityRows
	}
	return nil
}
