package backend

import (
	"context"
	"net/http"

	"aquadesk/pkg/models"
)

func (c *client) FetchCouriers(ctx context.Context) ([]*models.Courier, error) {
	var raws []RawCourier
	if err := c.do(ctx, http.MethodGet, "/couriers/all", nil, &raws); err != nil {
		return nil, err
	}

	couriers := make([]*models.Courier, 0, len(raws))
	for _, raw := range raws {
		couriers = append(couriers, NormalizeCourier(raw))
	}
	return couriers, nil
}
