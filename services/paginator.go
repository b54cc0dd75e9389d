package services

import (
	"strconv"

	"yatube/models"
)

// DefaultPageSize - размер страницы ленты по умолчанию
const DefaultPageSize = 10

// ParsePageNumber нормализует номер страницы из query-параметра:
// мусор и неположительные значения превращаются в 1, не в ошибку.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Paginate нарезает последовательность постов на страницы фиксированного
// размера. Номер страницы за пределами диапазона прижимается к последней
// странице. Пустая последовательность дает одну пустую страницу.
func Paginate(posts []models.FeedPost, pageNumber, pageSize int) models.Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageNumber < 1 {
		pageNumber = 1
	}

	totalPages := (len(posts) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if pageNumber > totalPages {
		pageNumber = totalPages
	}

	start := (pageNumber - 1) * pageSize
	end := start + pageSize
	if start > len(posts) {
		start = len(posts)
	}
	if end > len(posts) {
		end = len(posts)
	}

	items := posts[start:end]
	if items == nil {
		items = []models.FeedPost{}
	}

	return models.Page{
		Posts:      items,
		PageNumber: pageNumber,
		TotalPages: totalPages,
		HasNext:    pageNumber < totalPages,
		HasPrev:    pageNumber > 1,
	}
}
