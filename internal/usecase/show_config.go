package usecase

import (
	"context"

	"github.com/cahaseler/cc-track/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
// Fields are ordered to minimize memory padding.
type ShowConfigOutput struct {
	GlobalError     error             // Why the global file cannot be loaded, if it cannot
	RepoError       error             // Why the repository file cannot be loaded, if it cannot
	EffectiveConfig *domain.Config    // Merged configuration (defaults + global + repo); nil when a file is broken
	GlobalConfig    domain.ConfigInfo // Global config file info
	RepoConfig      domain.ConfigInfo // Repository config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information and the effective config.
// Each existing file is loaded on its own so a broken one is reported on
// its layer; the merged config is then unavailable but no error is returned.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	out := &ShowConfigOutput{
		GlobalConfig: uc.configManager.GlobalConfigInfo(),
		RepoConfig:   uc.configManager.RepoConfigInfo(),
	}
	if out.GlobalConfig.Exists {
		_, out.GlobalError = uc.configLoader.LoadGlobal()
	}
	if out.RepoConfig.Exists {
		_, out.RepoError = uc.configLoader.LoadRepo()
	}

	effective, err := uc.configLoader.Load()
	if err != nil {
		if out.GlobalError != nil || out.RepoError != nil {
			return out, nil
		}
		return nil, err
	}
	out.EffectiveConfig = effective
	return out, nil
}
