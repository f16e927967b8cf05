package catalog

import "go.uber.org/zap"

// Runner loads a catalog file, patches it and writes it back.
type Runner struct {
	Patcher *Patcher
	Store   Store
	DryRun  bool
	Logger  *zap.Logger
}

// Run patches the catalog at path. Read and write failures are fatal;
// unresolved gaps only show up in Result.Remaining.
func (r *Runner) Run(path string) (Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	doc, err := r.Store.Read(path)
	if err != nil {
		return Result{}, err
	}

	res := r.Patcher.Patch(doc)
	logger.Debug("patched catalog",
		zap.String("path", path),
		zap.Int("found", res.Found),
		zap.Int("patched", res.Patched),
		zap.Int("remaining", res.Remaining))

	switch {
	case r.DryRun:
		logger.Debug("dry run, catalog not written", zap.String("path", path))
	case !res.Changed:
		logger.Debug("catalog unchanged, skipping write", zap.String("path", path))
	default:
		if err := r.Store.Write(path, res.Content); err != nil {
			return res, err
		}
		logger.Debug("catalog updated", zap.String("path", path), zap.Int("patched", res.Patched))
	}
	return res, nil
}
