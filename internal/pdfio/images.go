package pdfio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// ExtractedImage is one image pulled out of a PDF page.
type ExtractedImage struct {
	Page int
	Path string
}

// ExtractImages writes every embedded image of the PDF into outDir and
// returns the written files grouped in page order. pdfcpu names extracted
// files <basename>_<page>_<resource>.<ext>, which is what the page index
// is recovered from.
func ExtractImages(pdfPath, outDir string) ([]ExtractedImage, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ExtractImagesFile(pdfPath, outDir, nil, conf); err != nil {
		return nil, fmt.Errorf("image extraction failed: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read extraction dir: %w", err)
	}

	base := strippedBase(pdfPath)
	var images []ExtractedImage
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		page, ok := pageFromExtractName(e.Name(), base)
		if !ok {
			continue
		}
		images = append(images, ExtractedImage{
			Page: page,
			Path: filepath.Join(outDir, e.Name()),
		})
	}
	sort.SliceStable(images, func(i, j int) bool {
		if images[i].Page != images[j].Page {
			return images[i].Page < images[j].Page
		}
		return images[i].Path < images[j].Path
	})
	return images, nil
}

// ImportImages assembles the given image files into a new PDF, one image
// per page, scaled to fit the page box.
func ImportImages(imageFiles []string, outFile string) error {
	if len(imageFiles) == 0 {
		return fmt.Errorf("no image files to import")
	}
	conf := model.NewDefaultConfiguration()

	imp, err := api.Import("form:A4, pos:c, scale:0.9 rel", types.POINTS)
	if err != nil {
		return fmt.Errorf("cannot build import settings: %w", err)
	}
	if err := api.ImportImagesFile(imageFiles, outFile, imp, conf); err != nil {
		return fmt.Errorf("image import failed: %w", err)
	}
	return nil
}

func strippedBase(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// pageFromExtractName parses the page number out of pdfcpu's
// "<base>_<page>_<resource>.<ext>" naming.
func pageFromExtractName(name, base string) (int, bool) {
	name = name[:len(name)-len(filepath.Ext(name))]
	if len(name) <= len(base)+1 || name[:len(base)] != base || name[len(base)] != '_' {
		return 0, false
	}
	rest := name[len(base)+1:]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '_' {
			page, err := strconv.Atoi(rest[:i])
			if err != nil {
				return 0, false
			}
			return page, true
		}
	}
	page, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return page, true
}
