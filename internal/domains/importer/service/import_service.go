package service

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"pos-admin-gateway/internal/domains/importer/model"
	"pos-admin-gateway/internal/infrastructure/posapi"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// prefetchPageSize bounds the category and tag snapshots loaded before
// the row loop. Entities beyond this are resolved through the
// create-on-miss path, which upstream rejects as duplicates.
const prefetchPageSize = 1000

// autoCreateDescription marks categories the importer created itself.
const autoCreateDescription = "Created via Bulk Import"

// CatalogAPI is the slice of the POS backend the importer needs.
type CatalogAPI interface {
	ListCategories(ctx context.Context, page, pageSize int, search string) ([]posapi.Category, int, error)
	CreateCategory(ctx context.Context, req posapi.CreateCategoryRequest) (*posapi.Category, error)
	ListTags(ctx context.Context, page, pageSize int, search string) ([]posapi.Tag, int, error)
	CreateTag(ctx context.Context, req posapi.CreateTagRequest) (*posapi.Tag, error)
	CreateProduct(ctx context.Context, req posapi.CreateProductRequest) (*posapi.Product, error)
}

// ServiceInterface runs bulk product imports against the POS backend.
type ServiceInterface interface {
	ImportFile(ctx context.Context, r io.Reader) (*model.Report, error)
	Run(ctx context.Context, rows []model.ImportRow) *model.Report
}

type importService struct {
	catalog   CatalogAPI
	onSuccess func(ctx context.Context)
}

// NewService builds the import engine. onSuccess fires once per run
// when at least one row was imported, after the report is final; pass
// nil when nothing needs to react.
func NewService(catalog CatalogAPI, onSuccess func(ctx context.Context)) ServiceInterface {
	return &importService{catalog: catalog, onSuccess: onSuccess}
}

// ImportFile parses the uploaded CSV and runs the reconciliation. A
// returned error means the file itself was unusable; row-level
// problems land in the report instead.
func (s *importService) ImportFile(ctx context.Context, r io.Reader) (*model.Report, error) {
	rows, err := model.ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, rows), nil
}

// Run executes one import: snapshot categories and tags, then walk the
// rows in file order, creating referenced entities on first miss.
// Rows are independent; a failed row never stops the run.
func (s *importService) Run(ctx context.Context, rows []model.ImportRow) *model.Report {
	report := &model.Report{TotalRows: len(rows)}

	categories, tags, err := s.prefetch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Import prefetch failed")
		report.AddFailure(0, fmt.Sprintf("System Error: %v", err))
		return report
	}

	for _, row := range rows {
		if err := s.importRow(ctx, row, categories, tags); err != nil {
			report.AddFailure(row.Row, fmt.Sprintf("Row %d: %s", row.Row, err))
		} else {
			report.AddSuccess(row.Row, fmt.Sprintf("Row %d: %s - OK", row.Row, row.ProductName))
		}
	}

	log.Info().
		Int("total", report.TotalRows).
		Int("success", report.SuccessCount).
		Int("failed", report.FailCount).
		Msg("Bulk import finished")

	if report.SuccessCount > 0 && s.onSuccess != nil {
		s.onSuccess(ctx)
	}
	return report
}

// prefetch loads the current category and tag snapshots concurrently
// and builds the name indexes for the run.
func (s *importService) prefetch(ctx context.Context) (*model.NameIndex, *model.NameIndex, error) {
	categories := model.NewNameIndex()
	tags := model.NewNameIndex()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, _, err := s.catalog.ListCategories(gctx, 1, prefetchPageSize, "")
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		for _, c := range list {
			categories.Put(c.CategoryName, c.ID)
		}
		return nil
	})
	g.Go(func() error {
		list, _, err := s.catalog.ListTags(gctx, 1, prefetchPageSize, "")
		if err != nil {
			return fmt.Errorf("load tags: %w", err)
		}
		for _, t := range list {
			tags.Put(t.TagName, t.ID)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return categories, tags, nil
}

// importRow reconciles a single row. The returned error is the
// user-facing failure reason for the report. Validation runs before
// any create call so an invalid row never leaves entities behind.
func (s *importService) importRow(ctx context.Context, row model.ImportRow, categories, tags *model.NameIndex) error {
	if row.Category == "" {
		return fmt.Errorf("empty category name")
	}
	if row.ProductName == "" {
		return fmt.Errorf("empty product name")
	}
	price, err := parsePrice(row.Price)
	if err != nil {
		return err
	}
	stock, err := parseStock(row.Stock)
	if err != nil {
		return err
	}

	categoryID, err := s.resolveCategory(ctx, row.Category, categories)
	if err != nil {
		return err
	}

	tagIDs := s.resolveTags(ctx, row, tags)

	_, err = s.catalog.CreateProduct(ctx, posapi.CreateProductRequest{
		ProductName: row.ProductName,
		CategoryID:  categoryID,
		Price:       price,
		Stock:       stock,
		TagIDs:      tagIDs,
		Active:      true,
	})
	if err != nil {
		return fmt.Errorf("create product: %v", err)
	}
	return nil
}

// resolveCategory maps a category name to its id, creating the
// category on first miss. Later rows naming the same category reuse
// the id from the index.
func (s *importService) resolveCategory(ctx context.Context, name string, idx *model.NameIndex) (int64, error) {
	if id, ok := idx.Get(name); ok {
		return id, nil
	}

	created, err := s.catalog.CreateCategory(ctx, posapi.CreateCategoryRequest{
		CategoryName: name,
		Description:  autoCreateDescription,
		Active:       true,
	})
	if err != nil {
		return 0, fmt.Errorf("create category %q: %v", name, err)
	}

	idx.Put(name, created.ID)
	return created.ID, nil
}

// resolveTags maps the row's tag names to ids, creating missing tags.
// Tags are decorative; a tag that cannot be created is logged and
// dropped rather than failing the row.
func (s *importService) resolveTags(ctx context.Context, row model.ImportRow, idx *model.NameIndex) []int64 {
	names := row.TagNames()
	if len(names) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		if id, ok := idx.Get(name); ok {
			ids = append(ids, id)
			continue
		}

		created, err := s.catalog.CreateTag(ctx, posapi.CreateTagRequest{TagName: name})
		if err != nil {
			log.Warn().Err(err).
				Int("row", row.Row).
				Str("tag", name).
				Msg("Failed to create tag, skipping")
			continue
		}
		idx.Put(name, created.ID)
		ids = append(ids, created.ID)
	}
	return ids
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}

func parseStock(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("invalid stock %q", raw)
	}
	stock, err := strconv.Atoi(raw)
	if err != nil || stock < 0 {
		return 0, fmt.Errorf("invalid stock %q", raw)
	}
	return stock, nil
}
