package app

import (
	"context"

	"github.com/CrestNiraj12/orgfeed/domain"
)

// CorpusService loads the full post corpus for the local user.
// Implemented by infrastructure (e.g. corpus.FileService reading a feed file).
type CorpusService interface {
	// Load returns every post the reader should see, already tokenized.
	Load(ctx context.Context) (domain.Corpus, error)
}
