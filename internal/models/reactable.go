package models

import "strconv"

// Типы объектов, на которые можно реагировать.
const (
	ReactableArticle = "article"
	ReactableComment = "comment"
)

// Reactable - объект, на который можно поставить реакцию.
type Reactable interface {
	ReactableType() string
	ReactableID() int64
}

// Ref - полиморфная ссылка {type, id} на объект.
type Ref struct {
	Type string `json:"type"`
	ID   int64  `json:"id"`
}

func (r Ref) ReactableType() string { return r.Type }
func (r Ref) ReactableID() int64    { return r.ID }

func (r Ref) String() string {
	return r.Type + ":" + strconv.FormatInt(r.ID, 10)
}

// RefOf приводит любой Reactable к Ref.
func RefOf(entity Reactable) Ref {
	return Ref{Type: entity.ReactableType(), ID: entity.ReactableID()}
}
