package domain

// QueryStatus is the active variant of a QueryResult.
type QueryStatus int

const (
	QueryLoading QueryStatus = iota
	QuerySuccess
	QueryFailure
)

// String returns a short name for logs.
func (s QueryStatus) String() string {
	switch s {
	case QueryLoading:
		return "loading"
	case QuerySuccess:
		return "success"
	case QueryFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// QueryResult is the outcome of one catalog query. Exactly one variant is
// active: Movies is only meaningful for QuerySuccess, Message only for
// QueryFailure.
type QueryResult struct {
	Status  QueryStatus
	Movies  []Movie
	Message string
}

// Loading returns the pending variant.
func Loading() QueryResult {
	return QueryResult{Status: QueryLoading}
}

// Succeeded returns the success variant. A nil list becomes an empty one.
func Succeeded(movies []Movie) QueryResult {
	if movies == nil {
		movies = []Movie{}
	}
	return QueryResult{Status: QuerySuccess, Movies: movies}
}

// Failed returns the failure variant carrying a user-visible message.
func Failed(message string) QueryResult {
	return QueryResult{Status: QueryFailure, Message: message}
}

func (r QueryResult) IsLoading() bool { return r.Status == QueryLoading }
func (r QueryResult) IsSuccess() bool { return r.Status == QuerySuccess }
func (r QueryResult) IsFailure() bool { return r.Status == QueryFailure }
