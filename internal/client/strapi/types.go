package strapi

type StrapiErrorDetail struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type StrapiErrors struct {
	Error StrapiErrorDetail `json:"error"`
}

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

type ListResponse[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

type DataEnvelope[T any] struct {
	Data T `json:"data"`
}

type StrapiClient struct {
	Id         int64  `json:"id"`
	DocumentId string `json:"documentId"`
	Client     string `json:"Client"`
}

type StrapiProjectRef struct {
	Id         int64  `json:"id"`
	DocumentId string `json:"documentId"`
	Name       string `json:"name"`
}

type StrapiProject struct {
	Id          int64          `json:"id"`
	DocumentId  string         `json:"documentId"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	StartDate   *string        `json:"startDate"`
	EndDate     *string        `json:"endDate"`
	Clients     []StrapiClient `json:"clients"`
}

type StrapiRole struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type StrapiUser struct {
	Id       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     *StrapiRole `json:"role"`
}

type StrapiTodo struct {
	Id                 int64             `json:"id"`
	DocumentId         string            `json:"documentId"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	DescriptionHistory string            `json:"descriptionHistory"`
	DueDate            *string           `json:"dueDate"`
	Position           string            `json:"position"`
	Project            *StrapiProjectRef `json:"project"`
	Assignee           *StrapiUser       `json:"assignee"`
}

type TodoPayload struct {
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	DescriptionHistory string  `json:"descriptionHistory"`
	DueDate            *string `json:"dueDate"`
	Position           string  `json:"position"`
	Project            *int64  `json:"project"`
	Assignee           *int64  `json:"assignee"`
	PublishedAt        string  `json:"publishedAt"`
}

type PositionPayload struct {
	Position string `json:"position"`
}

type ProjectPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Clients     []string `json:"clients"`
	StartDate   *string  `json:"startDate"`
	EndDate     *string  `json:"endDate"`
}

type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type LoginResponse struct {
	Jwt  string     `json:"jwt"`
	User StrapiUser `json:"user"`
}
