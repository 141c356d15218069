package queries

import "context"

type GetParcelQueryHandler struct {
	parcels ParcelReader
}

func NewGetParcelQueryHandler(parcels ParcelReader) GetParcelQueryHandler {
	return GetParcelQueryHandler{parcels: parcels}
}

func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (ParcelResponse, error) {
	if err := query.Validate(); err != nil {
		return ParcelResponse{}, err
	}

	p, err := h.parcels.Get(ctx, query.ParcelID())
	if err != nil {
		return ParcelResponse{}, err
	}
	return NewParcelResponse(p), nil
}
