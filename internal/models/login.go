package models

// Login links a user to an external login provider.
type Login struct {
	LoginProvider       string
	ProviderKey         string
	ProviderDisplayName string
}

// Is reports whether l refers to the given provider and key.
func (l Login) Is(provider, providerKey string) bool {
	return l.LoginProvider == provider && l.ProviderKey == providerKey
}
