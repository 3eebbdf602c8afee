package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/project-cli/internal/bitbucket"
	"github.com/aidanlsb/project-cli/internal/engine"
	"github.com/aidanlsb/project-cli/internal/shellquote"
	"github.com/aidanlsb/project-cli/internal/store"
)

// Cloner clones a git repository into dir.
type Cloner interface {
	Clone(ctx context.Context, url, dir string, progress io.Writer) error
}

// gitCloner clones with go-git, so no git binary is needed.
type gitCloner struct{}

func (gitCloner) Clone(ctx context.Context, url, dir string, progress io.Writer) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Progress: progress,
	})
	return err
}

func (a *app) importCmd() *cobra.Command {
	cmd := a.command("import")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		create, _ := cmd.Flags().GetBool("create")

		urls, err := a.readURLFile(args[0])
		if err != nil {
			return err
		}
		a.log.Debug("import urls read", zap.String("file", args[0]), zap.Int("count", len(urls)))

		var report engine.ImportReport
		_, s, err := a.updateStore(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			var changed bool
			report, changed = engine.ImportRepos(s, urls, create)
			return engine.Result{Changed: changed}, nil
		})
		if err != nil {
			return err
		}

		skipped := make([]string, 0, len(report.Skipped))
		for url := range report.Skipped {
			skipped = append(skipped, url)
		}
		sort.Strings(skipped)

		if a.jsonOutput {
			warnings := make([]Warning, 0, len(skipped))
			for _, url := range skipped {
				warnings = append(warnings, Warning{Code: WarnImportSkipped, Message: report.Skipped[url], Ref: url})
			}
			data := map[string]interface{}{
				"created": report.Created,
				"updated": report.Updated,
				"active":  s.Active,
			}
			a.outputSuccessWithWarnings(data, warnings, &Meta{Count: len(report.Created) + len(report.Updated)})
			return nil
		}

		for _, name := range report.Created {
			a.printf("Created project '%s'\n", name)
		}
		for _, name := range report.Updated {
			a.printf("Updated project '%s'\n", name)
		}
		for _, url := range skipped {
			a.warnf("skipped %s: %s", url, report.Skipped[url])
		}
		a.printf("Imported %d, skipped %d\n", len(report.Created)+len(report.Updated), len(skipped))
		return nil
	}
	return cmd
}

func (a *app) readURLFile(path string) ([]string, error) {
	if path == "-" {
		return bitbucket.ReadURLs(a.in)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, usageError{fmt.Errorf("cannot read %s: %w", path, err)}
	}
	defer f.Close()
	return bitbucket.ReadURLs(f)
}

func (a *app) cloneCmd() *cobra.Command {
	cmd := a.command("clone")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, _ := cmd.Flags().GetString("root")
		if strings.TrimSpace(root) == "" {
			root = a.cfg.GetCloneRoot()
		} else {
			root = a.expander.Normalize(root, a.cwd())
		}

		s, err := a.loadStore()
		if err != nil {
			return err
		}
		cloneURL, err := engine.CloneTarget(s, name)
		if err != nil {
			return err
		}

		dir := filepath.Join(root, name)
		if _, err := os.Stat(dir); err == nil {
			return store.AlreadyExists(
				fmt.Sprintf("Record it with 'project goto add %s %s'", engine.DirKey, shellquote.QuoteIfNeeded(dir)),
				"destination already exists: %s", dir)
		}

		var progress io.Writer
		if !a.jsonOutput {
			progress = a.errOut
		}
		a.log.Info("cloning repository", zap.String("project", name), zap.String("url", cloneURL), zap.String("dir", dir))
		if err := a.cloner.Clone(cmd.Context(), cloneURL, dir, progress); err != nil {
			return newCodedError(ErrCloneFailed, "", "clone %s: %w", cloneURL, err)
		}

		res, s, err := a.updateStore(cmd.Context(), func(s *store.Store) (engine.Result, error) {
			return engine.RecordClone(s, name, dir)
		})
		if err != nil {
			return err
		}

		if a.jsonOutput {
			a.outputSuccess(map[string]interface{}{
				"project": name,
				"url":     cloneURL,
				"dir":     dir,
				"active":  s.Active,
			}, nil)
			return nil
		}
		a.printf("Cloned %s into %s\n", cloneURL, dir)
		a.println(res.Message)
		return nil
	}
	return cmd
}

func (a *app) jenkinsURLCmd() *cobra.Command {
	cmd := a.command("jenkins-url")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		domain := trimmedArg(args, 1)
		if domain == "" {
			domain = strings.TrimSpace(a.cfg.JenkinsURL)
		}
		if domain == "" {
			return newCodedError(ErrInvalidInput, "Pass a domain or set jenkins_url in config.toml",
				"jenkins domain is required")
		}

		jenkinsURL, err := bitbucket.JenkinsURL(args[0], domain)
		if err != nil {
			return usageError{err}
		}

		if a.jsonOutput {
			a.outputSuccess(map[string]interface{}{"url": jenkinsURL}, nil)
			return nil
		}
		a.println(jenkinsURL)
		return nil
	}
	return cmd
}
