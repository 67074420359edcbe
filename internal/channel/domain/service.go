package domain

import "context"

// Service resolves channel identifiers to canonical channel profiles.
type Service interface {
	// Resolve looks up a channel by its stable code.
	Resolve(ctx context.Context, code string) (*Channel, error)
	// ResolveMarketplace looks up a channel by marketplace name and account.
	ResolveMarketplace(ctx context.Context, marketplace, account string) (*Channel, error)
	// List returns every active channel.
	List(ctx context.Context) ([]Channel, error)
}
