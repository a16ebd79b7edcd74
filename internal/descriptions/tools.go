package descriptions

// Tool descriptions with practical examples and use cases

const (
	// Spreadsheet tools
	CSVToExcelDescription = `Convert a CSV file into an Excel workbook with sized columns.

**When to use:** Need a shareable .xlsx from raw CSV exports, including files in legacy Chinese encodings.

**Why it's useful:** Decodes UTF-8, GBK, GB18030, and Latin-1 automatically (and reports which encoding was used), then writes a single worksheet with column widths estimated from the data.

**Examples:**
• Tabulate an export: "Convert sales-export.csv to Excel for the finance team"
• Legacy data: "Convert gbk-encoded orders.csv so the cells read correctly"

**Best practices:** Rows may have uneven lengths; short rows are padded. Check used_encoding in the result when the source origin is unknown.`

	ExcelToCSVDescription = `Convert each worksheet of an Excel workbook into its own CSV file.

**When to use:** Downstream systems need plain CSV instead of .xlsx.

**Why it's useful:** Emits one UTF-8 CSV per worksheet and keeps going when a single worksheet fails to read, reporting the skipped ones instead of failing the whole workbook.

**Examples:**
• Data pipeline feed: "Split report.xlsx into per-sheet CSVs for the loader"
• Quick inspection: "Get the raw values out of budget.xlsx"

**Best practices:** Check failed_sheets in the result for partial successes.`

	ExcelToPDFDescription = `Render an Excel workbook as a PDF with automatic table layout.

**When to use:** Need a printable, fixed-layout snapshot of spreadsheet data.

**Why it's useful:** Estimates column widths from cell content, then picks the best page strategy automatically: portrait, landscape, shrink-to-fit, or splitting wide tables into labeled column groups.

**Examples:**
• Print-ready report: "Render quarterly-figures.xlsx as a PDF for the board pack"
• Wide data: "Convert the 30-column inventory sheet; over-wide tables split into 'Part i of N' sections"

**Best practices:** The chosen strategy is reported in the result; header rows repeat in every split part.`

	// PDF tools
	PDFToImageDescription = `Extract page images from a PDF and re-encode them to a chosen format.

**When to use:** Need the pictures out of scanned documents or image-heavy PDFs.

**Why it's useful:** Pulls every embedded page image and converts it to png, jpeg, bmp, or tiff, named by page number.

**Examples:**
• Scanned archive: "Extract all pages of scanned-contract.pdf as PNG files"
• Photo recovery: "Get the images out of brochure.pdf as JPEGs"

**Best practices:** Works on embedded images; a born-digital PDF with no images returns an explicit error rather than blank pages.`

	PDFToTextDescription = `Extract plain text from a PDF with reconstructed reading order.

**When to use:** Need the document's text content for search, analysis, or archiving.

**Why it's useful:** Rebuilds lines from positioned characters, drops text that is already part of a detected table, and separates pages with '--- Page N ---' markers. Table-aware mode emits detected tables as tab-separated rows.

**Examples:**
• Research: "Get the text of methodology.pdf for analysis"
• Data capture: "Extract price-list.pdf with table_aware so the rows stay aligned"

**Best practices:** Set table_aware=true when the document is mostly tabular.`

	PDFToWordDescription = `Reconstruct a PDF as an editable Word document.

**When to use:** Need to edit or repurpose content locked in a PDF.

**Why it's useful:** Rebuilds paragraphs, detects aligned rows as real Word tables, maps oversized fonts to heading styles, and re-embeds page images, all in reading order.

**Examples:**
• Contract edits: "Convert signed-agreement.pdf to DOCX for redlining"
• Content reuse: "Turn whitepaper.pdf into an editable draft"

**Best practices:** Reconstruction is layout-driven; heavily designed pages come back as flowing content, not absolute positioning.`

	// Presentation tools
	PPTToPDFDescription = `Render a PowerPoint deck as a PDF, one page per slide.

**When to use:** Need a fixed, portable rendition of a .pptx presentation.

**Why it's useful:** Reads slide geometry directly (text boxes, tables, pictures), orders content top-to-bottom per slide, and keeps font sizes, bold, colors, and alignment.

**Examples:**
• Distribution: "Convert all-hands.pptx to PDF for the mailing list"
• Archiving: "Snapshot pitch-deck.pptx as PDF"

**Best practices:** Unreadable slides are skipped with the rest of the deck still converted; the slide count is reported.`

	// HTML tools
	HTMLToPDFDescription = `Render an HTML document as a paginated PDF.

**When to use:** Need a print-ready PDF from saved or generated HTML.

**Why it's useful:** Understands headings, paragraphs, ordered and unordered lists, tables with header rows, and base64-embedded images; scripts and styles are ignored.

**Examples:**
• Report generation: "Render the generated summary.html as PDF"
• Page capture: "Convert the saved article.html for offline reading"

**Best practices:** Remote image URLs are not fetched; inline data URIs are embedded.`

	HTMLToWordDescription = `Convert an HTML document into a Word document.

**When to use:** Need editable .docx content from HTML sources.

**Why it's useful:** Maps h1-h6 to Word heading styles, list items to prefixed paragraphs, and HTML tables to bordered Word tables with a shaded header row.

**Examples:**
• CMS migration: "Convert exported article.html to DOCX for the editors"
• Templates: "Turn the HTML proposal into a Word starting point"

**Best practices:** Same HTML subset as html_to_pdf; check the blocks count to confirm content was found.`

	// Image tools
	ImageToPDFDescription = `Wrap an image file into a single-page PDF.

**When to use:** Need to attach or archive an image in PDF form.

**Why it's useful:** Accepts png, jpg, bmp, gif, and tiff, probes the true dimensions, and centers the image scaled to an A4 page.

**Examples:**
• Receipts: "Convert receipt-scan.jpg to PDF for the expense system"
• Diagrams: "Wrap architecture.png as a PDF attachment"

**Best practices:** The probed pixel dimensions and detected format are reported for verification.`

	// Text tools
	TextToPDFDescription = `Render a plain-text or Markdown file as a PDF.

**When to use:** Need a formatted, portable rendition of notes or documentation.

**Why it's useful:** Markdown gets full structure: headings, lists, and tables render properly. Plain text becomes one paragraph per line. CJK content is handled when a suitable font is available.

**Examples:**
• Docs: "Render README.md as a PDF handout"
• Logs/notes: "Convert meeting-notes.txt to PDF"

**Best practices:** Use the .md extension to trigger Markdown rendering; .txt is rendered verbatim.`

	TextToWordDescription = `Convert a plain-text or Markdown file into a Word document.

**When to use:** Need an editable .docx from lightweight sources.

**Why it's useful:** Markdown headings map to Word heading styles and Markdown tables become real Word tables; plain text becomes clean paragraphs.

**Examples:**
• Drafting: "Turn outline.md into a Word draft"
• Handover: "Convert release-notes.txt to DOCX for review"

**Best practices:** Same front-end as text_to_pdf; the markdown flag in the result confirms which path ran.`

	// Word tools
	WordToPDFDescription = `Render a Word document as a PDF with re-derived numbering and outline.

**When to use:** Need a faithful, fixed-layout rendition of a .docx.

**Why it's useful:** Re-derives list numbering (decimal, roman, letters, bullets, CJK numerals) from the document's numbering definitions, clamps the heading outline so levels never jump, honors table grid widths, and re-embeds inline images. Wide tables fall back to landscape, shrink-to-fit, or column splitting.

**Examples:**
• Final deliverable: "Render contract-final.docx as PDF"
• Numbered specs: "Convert spec.docx keeping the clause numbering intact"

**Best practices:** The clamped heading outline is returned in the result as a navigation summary.`

	WordToTextDescription = `Extract plain text from a Word document.

**When to use:** Need the raw text of a .docx for indexing, diffing, or analysis.

**Why it's useful:** Keeps re-derived list numbering as literal prefixes and emits table rows as tab-separated lines, so the text alone still carries the document's structure.

**Examples:**
• Search indexing: "Extract handbook.docx to text for the search pipeline"
• Diffing: "Get plain text of both contract revisions to compare"

**Best practices:** Headings keep their own lines; use word_to_pdf when visual fidelity matters.`

	// Server info
	ServerInfoDescription = `Get real-time server status, available conversion tools, and limits.

**When to use:** Starting a session, checking which conversions are available, or debugging configuration.

**Why it's useful:** Reports the configured input/output directories, the file size cap, and the full tool list so clients can plan conversions without trial and error.

**Examples:**
• Session setup: "Check server capabilities before converting"
• Debugging: "Confirm which directory the server is scoped to"

**Best practices:** Call once at session start; directories and limits do not change at runtime.`
)
