package system

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/coparent/internal/cli"
	"github.com/julianstephens/coparent/internal/export"
)

type ExportCmd struct {
	File string `arg:"" type:"path" help:"Output workbook (.xlsx)."`
	Year int    `short:"y" help:"Calendar year to export. Defaults to the current year."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	if !strings.EqualFold(filepath.Ext(c.File), ".xlsx") {
		return fmt.Errorf("export file must end in .xlsx: %s", c.File)
	}

	year := c.Year
	if year == 0 {
		year = ctx.Today().Year()
	}

	h, err := ctx.Household()
	if err != nil {
		return err
	}

	if err := export.WriteFile(c.File, h, ctx.Resolver, year); err != nil {
		return err
	}

	ctx.Printf("✓ Exported %d to %s\n", year, c.File)
	return nil
}
