package queries

import "context"

type GetRiderQueryHandler struct {
	riders RiderReader
}

func NewGetRiderQueryHandler(riders RiderReader) GetRiderQueryHandler {
	return GetRiderQueryHandler{riders: riders}
}

func (h GetRiderQueryHandler) Handle(ctx context.Context, query GetRiderQuery) (RiderResponse, error) {
	if err := query.Validate(); err != nil {
		return RiderResponse{}, err
	}

	r, err := h.riders.Get(ctx, query.RiderID())
	if err != nil {
		return RiderResponse{}, err
	}
	return NewRiderResponse(r), nil
}
