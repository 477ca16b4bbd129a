package glossary

import (
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"odx/internal/domain"
)

// Loader reads a glossary catalog override from a YAML file.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("catalog")}
}

type rawCatalog struct {
	Entries []domain.GlossaryEntry `mapstructure:"entries"`
}

// Load returns the catalog at path, or the built-in catalog when path is
// empty. A file that exists but fails to parse or validate is an error; the
// caller decides whether that is fatal.
func (l *Loader) Load(path string) ([]domain.GlossaryEntry, error) {
	if path == "" {
		catalog := DefaultCatalog()
		l.logger.Debug("using built-in catalog", zap.Int("entries", len(catalog)))
		return catalog, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, domain.E(domain.CodeNotFound, "catalog.load", "catalog file not readable", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, domain.E(domain.CodeInvalidArgument, "catalog.load", "catalog file parse failed", err)
	}

	var raw rawCatalog
	if err := v.Unmarshal(&raw); err != nil {
		return nil, domain.E(domain.CodeInvalidArgument, "catalog.load", "catalog file decode failed", err)
	}

	catalog := make([]domain.GlossaryEntry, 0, len(raw.Entries))
	for _, entry := range raw.Entries {
		if entry.FieldsSource == "" {
			entry.FieldsSource = domain.FieldsDynamic
		}
		catalog = append(catalog, entry)
	}
	if err := domain.ValidateCatalog(catalog); err != nil {
		return nil, err
	}

	l.logger.Info("loaded catalog override",
		zap.String("path", path),
		zap.Int("entries", len(catalog)),
	)
	return catalog, nil
}
