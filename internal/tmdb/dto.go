package tmdb

// listResponse is the envelope shared by every paginated TMDB list endpoint.
// Pointer fields distinguish an absent key from a zero value.
type listResponse struct {
	Page         *int        `json:"page"`
	Results      []resultDTO `json:"results"`
	TotalPages   *int        `json:"total_pages"`
	TotalResults *int        `json:"total_results"`
}

// resultDTO covers movie, TV and person records in list responses
type resultDTO struct {
	ID               int64       `json:"id"`
	MediaType        string      `json:"media_type"`
	Title            string      `json:"title"`
	OriginalTitle    string      `json:"original_title"`
	Name             string      `json:"name"`
	BackdropPath     string      `json:"backdrop_path"`
	PosterPath       string      `json:"poster_path"`
	ProfilePath      string      `json:"profile_path"`
	VoteAverage      float64     `json:"vote_average"`
	ReleaseDate      string      `json:"release_date"`
	FirstAirDate     string      `json:"first_air_date"`
	Overview         string      `json:"overview"`
	Popularity       float64     `json:"popularity"`
	OriginalLanguage string      `json:"original_language"`
	KnownFor         []resultDTO `json:"known_for"`
}

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// detailsResponse covers /movie/{id} and /tv/{id}
type detailsResponse struct {
	resultDTO
	Tagline          string     `json:"tagline"`
	Genres           []genreDTO `json:"genres"`
	Runtime          int        `json:"runtime"`
	NumberOfSeasons  int        `json:"number_of_seasons"`
	NumberOfEpisodes int        `json:"number_of_episodes"`
	Status           string     `json:"status"`
	Homepage         string     `json:"homepage"`
}

type castDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type creditsResponse struct {
	ID   int64     `json:"id"`
	Cast []castDTO `json:"cast"`
}

// errorResponse is the body TMDB sends with non-2xx statuses
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success"`
}

type authenticationResponse struct {
	Success       bool   `json:"success"`
	StatusMessage string `json:"status_message"`
}
