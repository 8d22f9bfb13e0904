package inventory

import "math"

// AverageDailySales calcula el promedio diario de ventas (servicio de dominio).
// windowDays debe ser > 0; con 0 o negativo devuelve 0 en lugar de dividir.
func AverageDailySales(unitsSold int64, windowDays int) float64 {
	if windowDays <= 0 || unitsSold <= 0 {
		return 0
	}
	return float64(unitsSold) / float64(windowDays)
}

// DaysUntilStockout proyecta los días hasta quiebre de stock:
// floor(StockActual / PromedioDiario). Puede ser 0 si el stock no alcanza
// ni para un día de demanda. averageDaily <= 0 no tiene señal de demanda y
// devuelve -1; el llamador debe omitir la predicción en ese caso.
func DaysUntilStockout(currentQuantity int64, averageDaily float64) int {
	if averageDaily <= 0 {
		return -1
	}
	if currentQuantity <= 0 {
		return 0
	}
	return int(math.Floor(float64(currentQuantity) / averageDaily))
}
