package config

type Security struct{}

var _ SecurityConfig = Security{}

// GetCredentialsPassphrase returns the passphrase used to seal the on-disk
// credential store. Empty means credentials are stored unsealed.
func (Security) GetCredentialsPassphrase() string {
	return GetEnv("CREDENTIALS_PASSPHRASE", "")
}
