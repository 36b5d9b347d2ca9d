package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"cvtailor-backend/internal/tailoring"
)

const (
	// A4 in inches, which is what PrintToPDF expects.
	a4WidthIn  = 8.27
	a4HeightIn = 11.69

	fontSettleDelay   = 2 * time.Second
	conversionTimeout = 60 * time.Second
)

// HTMLToPDF renders the HTML file at htmlPath in headless Chrome and
// writes the printed PDF to pdfPath, overwriting any existing file.
// Requires Chrome or Chromium on the system.
func HTMLToPDF(ctx context.Context, htmlPath, pdfPath string) error {
	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", tailoring.ErrPDFConversion, err)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, conversionTimeout)
	defer cancel()

	var pdfData []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+filepath.ToSlash(absPath)),
		chromedp.WaitReady("body"),
		// Web fonts render a beat after the document is ready.
		chromedp.Sleep(fontSettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4WidthIn).
				WithPaperHeight(a4HeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = buf
			return nil
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", tailoring.ErrPDFConversion, err)
	}

	if err := os.WriteFile(pdfPath, pdfData, 0o644); err != nil {
		return fmt.Errorf("%w: write output: %v", tailoring.ErrPDFConversion, err)
	}
	return nil
}
