package docstore

import (
	_ "embed"

	"github.com/huangsam/mediascore/schema"
)

//go:embed fixtures/sample_corpus.yaml
var sampleCorpus []byte

// SampleCorpus returns the built-in demo corpus used by `store seed` when no file is given.
func SampleCorpus() schema.Corpus {
	corpus, err := ParseCorpus(sampleCorpus)
	if err != nil {
		panic(err) // embedded fixture is always valid
	}
	return corpus
}
