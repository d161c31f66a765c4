package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/foodgram-project/backend/database"
)

// ShoppingCartFilename is the download filename suggested by the CSV export.
const ShoppingCartFilename = "shopping_cart.csv"

// ShoppingCartMIMEType is the content type of the export.
const ShoppingCartMIMEType = "text/csv"

var shoppingCartHeader = []string{"Название", "Количество", "Единица измерения"}

// Aggregator consolidates a user's shopping cart into one line per
// ingredient and renders the downloadable list.
type Aggregator struct {
	cart *database.CartRepo
}

func NewAggregator(cart *database.CartRepo) Aggregator {
	return Aggregator{cart: cart}
}

// Aggregate returns one line per distinct ingredient across every recipe in
// the user's cart, amounts summed, ordered by ingredient id. An empty cart
// yields an empty slice.
func (a Aggregator) Aggregate(userID uint) ([]database.CartLine, error) {
	return a.cart.Aggregate(userID)
}

// RenderCSV renders aggregated cart lines as the UTF-8 CSV export: a header
// row followed by one row per ingredient.
func RenderCSV(lines []database.CartLine) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(shoppingCartHeader); err != nil {
		return nil, err
	}
	for _, line := range lines {
		record := []string{line.Name, strconv.Itoa(line.Amount), line.MeasurementUnit}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
