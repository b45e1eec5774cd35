// Command mapreport renders a paginated, printable map report from a
// viewport capture and a TOML job description.
//
// # Usage
//
//	mapreport render --job job.toml --image viewport.png --out report.pdf
//
// The job file describes the document content:
//
//	format = "A4"
//	orientation = "portrait"
//	title = "Flood Risk Overview"
//	description = "Flood risk zones of the Lower River District."
//	copyright = ["© State Mapping Agency"]
//	link = "https://maps.example.org/?view=riverton"
//	logo = "logo.png"
//	letterhead = "letterhead.pdf"
//	styles = "styles.toml"
//
//	[contact]
//	header = "Contact"
//	name = "State Mapping Agency"
//	email = "maps@example.org"
//
//	[mapinfo]
//	header = "Map information"
//	lines = ["Scale 1:25000", "EPSG:25832"]
//
//	[[legend.group]]
//	title = "Flood zones"
//	images = ["legend-flood.png"]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mapreport "github.com/lvillar/mapreport"
	"github.com/lvillar/mapreport/canvas"
	"github.com/lvillar/mapreport/legend"
	"github.com/lvillar/mapreport/pdfcanvas"
	"github.com/lvillar/mapreport/style"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "mapreport: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mapreport",
		Short:         "Render printable map reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var (
		jobPath   string
		imagePath string
		outPath   string
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report PDF from a job file and a viewport capture",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr)
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			return render(logger, jobPath, imagePath, outPath)
		},
	}
	cmd.Flags().StringVar(&jobPath, "job", "", "job description TOML file")
	cmd.Flags().StringVar(&imagePath, "image", "", "viewport capture (png or jpeg)")
	cmd.Flags().StringVar(&outPath, "out", "report.pdf", "output PDF path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	cmd.MarkFlagRequired("job")
	cmd.MarkFlagRequired("image")
	return cmd
}

// jobFile mirrors the TOML job description.
type jobFile struct {
	Format      string   `toml:"format"`
	Orientation string   `toml:"orientation"`
	Title       string   `toml:"title"`
	Description string   `toml:"description"`
	Copyright   []string `toml:"copyright"`
	Link        string   `toml:"link"`
	Logo        string   `toml:"logo"`
	Letterhead  string   `toml:"letterhead"`
	Styles      string   `toml:"styles"`

	Contact *struct {
		Header  string `toml:"header"`
		Name    string `toml:"name"`
		Address string `toml:"address"`
		Phone   string `toml:"phone"`
		Email   string `toml:"email"`
	} `toml:"contact"`

	MapInfo *struct {
		Header string   `toml:"header"`
		Lines  []string `toml:"lines"`
	} `toml:"mapinfo"`

	Legend struct {
		Groups []struct {
			Title  string   `toml:"title"`
			Images []string `toml:"images"`
		} `toml:"group"`
	} `toml:"legend"`

	Font struct {
		Family  string `toml:"family"`
		Regular string `toml:"regular"`
		Bold    string `toml:"bold"`
	} `toml:"font"`
}

func render(logger *log.Logger, jobPath, imagePath, outPath string) error {
	var job jobFile
	if _, err := toml.DecodeFile(jobPath, &job); err != nil {
		return fmt.Errorf("reading job file: %w", err)
	}

	viewport, err := loadImage("viewport", imagePath)
	if err != nil {
		return err
	}
	nat, err := viewport.NaturalSize()
	if err != nil {
		return fmt.Errorf("probing viewport image: %w", err)
	}

	format := style.Format(strings.ToUpper(job.Format))
	if format == "" {
		format = style.FormatA4
	}
	orient := style.Orientation(strings.ToLower(job.Orientation))
	if orient == "" {
		orient = style.Portrait
	}

	cfg := mapreport.Config{
		Format:         format,
		Orientation:    orient,
		Title:          job.Title,
		Description:    job.Description,
		Copyright:      job.Copyright,
		ViewportAspect: nat.AspectRatio(),
		LinkURL:        job.Link,
	}
	if job.Contact != nil {
		cfg.Contact = &mapreport.Contact{
			Header:  job.Contact.Header,
			Name:    job.Contact.Name,
			Address: job.Contact.Address,
			Phone:   job.Contact.Phone,
			Email:   job.Contact.Email,
		}
	}
	if job.MapInfo != nil {
		cfg.MapInfo = &mapreport.MapInfo{Header: job.MapInfo.Header, Lines: job.MapInfo.Lines}
	}
	if job.Logo != "" {
		logo, err := loadImage("logo", job.Logo)
		if err != nil {
			return err
		}
		cfg.Logo = &logo
	}
	if len(job.Legend.Groups) > 0 {
		lc := &legend.Config{Format: format, Orientation: orient}
		for _, g := range job.Legend.Groups {
			group := legend.Group{Title: g.Title}
			for i, path := range g.Images {
				img, err := loadImage(fmt.Sprintf("legend-%s-%d", g.Title, i), path)
				if err != nil {
					return err
				}
				group.Items = append(group.Items, legend.Item{Kind: legend.ItemImage, Image: &img})
			}
			lc.Groups = append(lc.Groups, group)
		}
		cfg.Legend = lc
	}
	if job.Font.Regular != "" {
		regular, err := os.ReadFile(job.Font.Regular)
		if err != nil {
			return fmt.Errorf("reading font: %w", err)
		}
		cfg.FontFamily = job.Font.Family
		cfg.FontRegular = regular
		if job.Font.Bold != "" {
			bold, err := os.ReadFile(job.Font.Bold)
			if err != nil {
				return fmt.Errorf("reading bold font: %w", err)
			}
			cfg.FontBold = bold
		}
	}

	opts := []mapreport.Option{mapreport.WithLogger(logger)}
	if job.Styles != "" {
		data, err := os.ReadFile(job.Styles)
		if err != nil {
			return fmt.Errorf("reading style overrides: %w", err)
		}
		over, err := style.ParseOverrides(data)
		if err != nil {
			return err
		}
		if sheet, ok := over[format]; ok {
			opts = append(opts, mapreport.WithStyleOverrides(sheet))
		}
	}
	if job.Letterhead != "" {
		opts = append(opts, mapreport.WithLetterhead(job.Letterhead))
	}

	rep := mapreport.New(cfg, pdfcanvas.Factory, opts...)
	if err := rep.Setup(); err != nil {
		return err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	if err := rep.Draw(out, viewport, nil); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("report written", "path", outPath, "pages", 1+rep.LegendPages())
	return nil
}

// loadImage reads an image file into a reference, inferring the encoding
// from the file extension.
func loadImage(name, path string) (canvas.ImageRef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return canvas.ImageRef{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "jpg" {
		format = "jpeg"
	}
	return canvas.ImageRef{Name: name, Format: format, Data: data}, nil
}
