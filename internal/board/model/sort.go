package model

type Sort string

const (
	SortLatest      Sort = "latest"
	SortMostReplies Sort = "most_replies"
)

func (s Sort) Valid() bool {
	return s == SortLatest || s == SortMostReplies
}
