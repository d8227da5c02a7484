package form

import (
	"time"

	"github.com/shopspring/decimal"

	"bizmate/internal/domain"
)

const dateLayout = "2006-01-02"

// taxRate is the flat VAT rate applied to purchase and estimate totals.
var taxRate = decimal.NewFromFloat(0.1)

// ApplyComputed recomputes the schema's computed fields from their inputs.
// Computed values always overwrite whatever the caller sent; they are never
// independently editable.
func ApplyComputed(docType domain.DocType, content domain.DocContent) (domain.DocContent, error) {
	schema, err := Get(docType)
	if err != nil {
		return nil, err
	}
	if schema.Compute == nil {
		return content, nil
	}
	return schema.Compute(content), nil
}

// computeLeave derives leaveDays from the inclusive date range and decrements
// the drafter's leave balance into remainingLeave.
func computeLeave(content domain.DocContent) domain.DocContent {
	start, errS := time.Parse(dateLayout, asString(content["startDate"]))
	end, errE := time.Parse(dateLayout, asString(content["endDate"]))
	if errS != nil || errE != nil || end.Before(start) {
		delete(content, "leaveDays")
		delete(content, "remainingLeave")
		return content
	}

	days := int(end.Sub(start).Hours()/24) + 1
	content["leaveDays"] = float64(days)

	balance := asDecimal(content["leaveBalance"])
	content["remainingLeave"] = balance.Sub(decimal.NewFromInt(int64(days))).InexactFloat64()
	return content
}

// computeLineItems derives subtotal, tax, and grand total from quantity and
// unit-price line items.
func computeLineItems(itemsKey, subtotalKey, taxKey, totalKey string) func(domain.DocContent) domain.DocContent {
	return func(content domain.DocContent) domain.DocContent {
		subtotal := decimal.Zero
		for _, row := range asRows(content[itemsKey]) {
			qty := asDecimal(row["quantity"])
			price := asDecimal(row["unitPrice"])
			subtotal = subtotal.Add(qty.Mul(price))
		}
		tax := subtotal.Mul(taxRate)

		content[subtotalKey] = subtotal.InexactFloat64()
		content[taxKey] = tax.InexactFloat64()
		content[totalKey] = subtotal.Add(tax).InexactFloat64()
		return content
	}
}

// computeRowTotal sums a single amount column across itemized rows.
func computeRowTotal(itemsKey, amountKey, totalKey string) func(domain.DocContent) domain.DocContent {
	return func(content domain.DocContent) domain.DocContent {
		total := decimal.Zero
		for _, row := range asRows(content[itemsKey]) {
			total = total.Add(asDecimal(row[amountKey]))
		}
		content[totalKey] = total.InexactFloat64()
		return content
	}
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asDecimal converts a JSON-decoded value to a decimal, treating anything
// unparseable as zero.
func asDecimal(v interface{}) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case int64:
		return decimal.NewFromInt(t)
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero
		}
		return d
	case decimal.Decimal:
		return t
	default:
		return decimal.Zero
	}
}

// asRows converts a JSON-decoded array of objects into row maps.
func asRows(v interface{}) []map[string]interface{} {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(raw))
	for _, r := range raw {
		if m, ok := r.(map[string]interface{}); ok {
			rows = append(rows, m)
		}
	}
	return rows
}
