package collect

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/trajlog-project/trajlog/pkg/config"
	"github.com/trajlog-project/trajlog/pkg/errclass"
	"github.com/trajlog-project/trajlog/pkg/logging"
)

// Converter materializes a frame listing from a raw trajectory by shelling
// out to the external conversion tool.
type Converter struct {
	command        string
	subcommand     string
	selectionGroup string
	listingExt     string
}

// NewConverter creates a converter from the loaded configuration.
func NewConverter(cfg *config.Config) *Converter {
	return &Converter{
		command:        cfg.Converter.Command,
		subcommand:     cfg.Converter.Subcommand,
		selectionGroup: cfg.Converter.SelectionGroup,
		listingExt:     cfg.Artifacts.ListingExt,
	}
}

// ListingPath derives the frame-listing path from the trajectory path: same
// basename, listing extension.
func (c *Converter) ListingPath(trajPath string) string {
	return strings.TrimSuffix(trajPath, filepath.Ext(trajPath)) + c.listingExt
}

// EnsureListing returns the path of the clone's frame listing, running the
// conversion only when neither the plain nor the gzipped listing exists.
// An existing listing is reused as-is, with no staleness check against the
// trajectory.
func (c *Converter) EnsureListing(trajPath, topolPath string) (string, error) {
	listing := c.ListingPath(trajPath)
	if _, err := os.Stat(listing); err == nil {
		logging.Debug("frame listing already present, conversion skipped", map[string]any{"listing": listing})
		return listing, nil
	}
	if gz := listing + ".gz"; fileExists(gz) {
		logging.Debug("compressed frame listing already present, conversion skipped", map[string]any{"listing": gz})
		return gz, nil
	}

	if !fileExists(topolPath) {
		return "", errclass.ErrTopologyMissing.WithMessagef("no topology reference at %s", topolPath)
	}
	if _, err := exec.LookPath(c.command); err != nil {
		return "", errclass.ErrConverterMissing.WithMessagef("%s not found in PATH", c.command)
	}

	cmd := exec.Command(c.command, c.subcommand, "-f", trajPath, "-s", topolPath, "-o", listing)
	cmd.Stdin = strings.NewReader(c.selectionGroup + "\n")
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// A partial listing would be mistaken for a cached one next run.
		os.Remove(listing)
		return "", errclass.ErrConverterFailed.WithMessagef("%s %s on %s: %v", c.command, c.subcommand, trajPath, err)
	}
	if !fileExists(listing) {
		return "", errclass.ErrConverterFailed.WithMessagef("%s %s exited 0 but produced no %s", c.command, c.subcommand, listing)
	}
	return listing, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
