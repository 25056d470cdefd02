package importer

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/logging"
	productsvc "storefront/internal/service/product"
)

type ProductWriter interface {
	UpsertByName(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads catalog CSV files and inserts or updates products by name.
//
// Expected header: name,description,image,price,category,quantity
type CSVImporter struct {
	in          io.Reader
	productRepo ProductWriter
	logger      *zap.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger *zap.Logger) *CSVImporter {
	return &CSVImporter{
		in:          r,
		productRepo: repo,
		logger:      logging.OrNop(logger).Named("importer"),
	}
}

type csvRow struct {
	Name        string `csv:"name"`
	Description string `csv:"description"`
	Image       string `csv:"image"`
	Price       string `csv:"price"`
	Category    string `csv:"category"`
	Quantity    string `csv:"quantity"`
}

// Run validates every row before writing any of them, then upserts the products.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(i.in, &rows); err != nil {
		return 0, fmt.Errorf("parse csv: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for n, row := range rows {
		p, err := row.product()
		if err != nil {
			// line 1 is the header
			return 0, fmt.Errorf("line %d: %w", n+2, err)
		}
		products = append(products, p)
	}

	imported := 0
	for _, p := range products {
		saved, err := i.productRepo.UpsertByName(ctx, p)
		if err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.Name, err)
		}
		i.logger.Debug("product imported", zap.String("product_id", saved.ID), zap.String("name", saved.Name))
		imported++
	}
	return imported, nil
}

func (r *csvRow) product() (domain.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return domain.Product{}, domain.Invalid("price %q is not a number", r.Price)
	}
	quantity := 0
	if q := strings.TrimSpace(r.Quantity); q != "" {
		quantity, err = strconv.Atoi(q)
		if err != nil {
			return domain.Product{}, domain.Invalid("quantity %q is not an integer", r.Quantity)
		}
	}
	return productsvc.Build(productsvc.CreateInput{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		Price:       price,
		Category:    domain.Category(strings.ToLower(strings.TrimSpace(r.Category))),
		Quantity:    quantity,
	})
}
