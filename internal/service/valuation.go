package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Portfolio-Share-Backend/internal/model"
)

// ComputeMetrics aggregates positions on a buy-price basis.
//
// totalValue is Σ(quantity × buyPrice), totalQuantity is Σ quantity and
// avgBuyPrice is totalValue / totalQuantity, or 0 when there is no quantity.
// Sums are exact decimals, converted to float64 only on the way out.
func ComputeMetrics(positions []model.Position) model.Metrics {
	totalValue := decimal.Zero
	totalQuantity := decimal.Zero

	for _, p := range positions {
		qty := decimal.NewFromFloat(p.Quantity)
		totalValue = totalValue.Add(qty.Mul(decimal.NewFromFloat(p.BuyPrice)))
		totalQuantity = totalQuantity.Add(qty)
	}

	avgBuyPrice := decimal.Zero
	if totalQuantity.IsPositive() {
		avgBuyPrice = totalValue.Div(totalQuantity)
	}

	return model.Metrics{
		TotalValue:    totalValue.InexactFloat64(),
		AvgBuyPrice:   avgBuyPrice.InexactFloat64(),
		TotalQuantity: totalQuantity.InexactFloat64(),
	}
}

// Project grows value by an annual return given in percent.
func Project(value, annualReturnPct float64) float64 {
	growth := decimal.NewFromFloat(annualReturnPct).Div(decimal.NewFromInt(100)).Add(decimal.NewFromInt(1))
	return decimal.NewFromFloat(value).Mul(growth).InexactFloat64()
}
