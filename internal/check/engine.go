/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package check

import (
	"context"
	"fmt"

	"github.com/opsforgehq/prevet/internal/gitctx"
	"github.com/opsforgehq/prevet/pkg/config"
	"github.com/opsforgehq/prevet/pkg/ignore"
	"github.com/opsforgehq/prevet/pkg/logger"
	"github.com/opsforgehq/prevet/pkg/tools"
)

// Options configures a check run.
type Options struct {
	// StagedOnly restricts discovery to the current git change-set
	StagedOnly bool

	// Categories restricts the run to the named categories when non-empty
	Categories []string

	// Reporter receives streamed results; defaults to QuietReporter
	Reporter Reporter
}

// Engine sequences the six category passes over a repository. Strictly
// sequential: each external invocation completes before the next file
// or category begins, and a failing file never stops the run.
type Engine struct {
	root     string
	cfg      *config.Config
	toolset  *tools.ToolSet
	matcher  *ignore.Matcher
	reporter Reporter
	opts     Options
}

// NewEngine builds an engine for the repo rooted at root. The tool set
// must already be resolved; resolution failures are precondition
// errors handled before the engine exists.
func NewEngine(root string, cfg *config.Config, ts *tools.ToolSet, opts Options) (*Engine, error) {
	matcher, err := ignore.NewMatcher(root)
	if err != nil {
		return nil, fmt.Errorf("failed to build ignore matcher: %w", err)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = QuietReporter{}
	}
	return &Engine{
		root:     root,
		cfg:      cfg,
		toolset:  ts,
		matcher:  matcher,
		reporter: reporter,
		opts:     opts,
	}, nil
}

// runners returns the category runners in fixed execution order.
func (e *Engine) runners() []Runner {
	return []Runner{
		NewStyleRunner(e.root, e.toolset, e.cfg.LintArgs(e.root)),
		NewSyntaxRunner(e.root, e.toolset),
		NewTemplateRunner(e.root, e.toolset),
		NewERBRunner(e.root, e.toolset),
		NewScriptRunner(e.root, e.toolset),
		NewDataRunner(e.root),
	}
}

func (e *Engine) categorySelected(c Category) bool {
	if len(e.opts.Categories) == 0 {
		return true
	}
	for _, name := range e.opts.Categories {
		if name == string(c) {
			return true
		}
	}
	return false
}

// Run executes every selected category pass and returns the aggregate
// result. Validation failures are data, not errors: the returned error
// is non-nil only for run-level problems such as an unreadable tree.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	var changed map[string]struct{}
	if e.opts.StagedOnly {
		changed = gitctx.ChangedFiles(e.root)
		if changed == nil {
			logger.Warn("could not read git change-set; checking the full tree")
		}
	}

	result := &Result{}
	for _, runner := range e.runners() {
		cat := runner.Category()
		if !e.categorySelected(cat) {
			continue
		}
		if !e.cfg.CategoryEnabled(string(cat)) {
			logger.Debug("category disabled by config", logger.String("category", string(cat)))
			continue
		}

		files, err := Discover(e.root, cat.Pattern(), DiscoverOptions{
			Reserved: e.cfg.ReservedSubtree,
			Ignore:   e.cfg.CategoryIgnore(string(cat)),
			Matcher:  e.matcher,
			Changed:  changed,
		})
		if err != nil {
			return nil, fmt.Errorf("discovery failed for %s: %w", cat, err)
		}

		e.reporter.CategoryHeader(cat, len(files))
		catResult := CategoryResult{Category: cat}
		for _, file := range files {
			outcome := runner.Check(ctx, file)
			e.reporter.FileOutcome(outcome)
			catResult.Outcomes = append(catResult.Outcomes, outcome)
			result.Checked++
			if !outcome.Passed {
				catResult.Failed++
				result.Failed++
			}
		}
		result.Categories = append(result.Categories, catResult)
	}

	e.reporter.Summary(result)
	return result, nil
}
