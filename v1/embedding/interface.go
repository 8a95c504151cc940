package embedding

import "context"

// Provider computes embeddings for a batch of texts. *Service implements it;
// code that only needs vectors should depend on Provider.
type Provider interface {
	// CreateEmbeddings returns one vector per text, in input order.
	CreateEmbeddings(ctx context.Context, model string, texts ...string) ([][]float64, error)
}

var _ Provider = (*Service)(nil)
