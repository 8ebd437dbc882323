package dto

import "lagoon/shared/constant"

// Pagination is the page metadata returned by every list endpoint.
type Pagination struct {
	Page      int  `json:"page"`
	TotalPage int  `json:"total_page"`
	TotalData int  `json:"total_data"`
	HasNext   bool `json:"has_next"`
	HasPrev   bool `json:"has_prev"`
}

func (p *Pagination) FromQuery(totalData int, params QueryParams) {
	limit := params.Limit
	if limit <= 0 {
		limit = constant.DefaultValueLimit
	}

	page := params.Page
	if page <= 0 {
		page = constant.DefaultValuePage
	}

	totalPage := totalData / limit
	if totalData%limit != 0 || totalPage == 0 {
		totalPage++
	}

	p.Page = page
	p.TotalPage = totalPage
	p.TotalData = totalData
	p.HasNext = page < totalPage
	p.HasPrev = page > 1
}
