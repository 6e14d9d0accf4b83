package pagination

import "gorm.io/gorm"

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

type Params struct {
	Page    int `form:"page,default=1"`
	PerPage int `form:"per_page,default=20"`
}

func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	return p
}

func (p Params) Apply(tx *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return tx.Offset((p.Page - 1) * p.PerPage).Limit(p.PerPage)
}

type PageInfo struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalCount int64 `json:"total_count"`
}

func NewPageInfo(p Params, total int64) PageInfo {
	p = p.Normalize()
	return PageInfo{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalCount: total,
	}
}
