package repository

import (
	"context"

	"CycleVis/internal/domain/models"
)

// IndicatorSource returns the full, ordered RSI dataset.
type IndicatorSource interface {
	FetchRSI(ctx context.Context) ([]models.IndicatorResult, error)
}

type Metrics interface {
	RecordFetch(result string, seconds float64)
	RecordDatasetSize(n int)
	RecordAssetLoad(symbol, result string)
	SessionOpened()
	SessionClosed()
	RecordRender(points int)
}
