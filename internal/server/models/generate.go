package models

import "context"

// Prober is the existence-probe subset of the class repository. Generation
// calls it once per candidate; a synchronized repository takes and releases
// its lock around every probe, never around the whole loop.
type Prober interface {
	ClassIDExists(ctx context.Context, id ClassID) (bool, error)
	PassPhraseExists(ctx context.Context, p PassPhrase) (bool, error)
	FileIDExists(ctx context.Context, id FileID) (bool, error)
}

// unique keeps drawing candidates until exists reports one as absent.
// There is no attempt limit: with 2^122 ids or 62^6 pass phrases and a
// sparse store the expected number of rounds is one.
func unique[T any](ctx context.Context, next func() (T, error), exists func(context.Context, T) (bool, error)) (T, error) {
	var zero T
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		candidate, err := next()
		if err != nil {
			return zero, err
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return zero, err
		}
		if !taken {
			return candidate, nil
		}
	}
}

// Generator produces candidate values. Tests swap it for deterministic
// sequences.
type Generator struct {
	ClassID    func() ClassID
	FileID     func() FileID
	PassPhrase func() (PassPhrase, error)
}

// DefaultGenerator uses v4 UUIDs and crypto/rand pass phrases.
var DefaultGenerator = Generator{
	ClassID:    NewClassID,
	FileID:     NewFileID,
	PassPhrase: func() (PassPhrase, error) { return GeneratePassPhrase(PassPhraseLength) },
}

// UniqueClassID returns a class id not present in the store at probe time.
func (g Generator) UniqueClassID(ctx context.Context, p Prober) (ClassID, error) {
	return unique(ctx, func() (ClassID, error) { return g.ClassID(), nil }, p.ClassIDExists)
}

// UniqueFileID returns a file id not present in the store at probe time.
func (g Generator) UniqueFileID(ctx context.Context, p Prober) (FileID, error) {
	return unique(ctx, func() (FileID, error) { return g.FileID(), nil }, p.FileIDExists)
}

// UniquePassPhrase returns a pass phrase not used by any class at probe time.
func (g Generator) UniquePassPhrase(ctx context.Context, p Prober) (PassPhrase, error) {
	return unique(ctx, g.PassPhrase, p.PassPhraseExists)
}
