package ledger

import "log/slog"

type option func(Blockchain) Blockchain

// WithDigest selects the hash function for every block of the chain.
func WithDigest(d Digest) option {
	return func(bc Blockchain) Blockchain {
		bc.digest = d
		return bc
	}
}

// WithLogger sets the logger receiving the verification trace.
func WithLogger(logger *slog.Logger) option {
	return func(bc Blockchain) Blockchain {
		if logger != nil {
			bc.logger = logger
		}
		return bc
	}
}
