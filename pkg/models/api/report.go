package api

type ReportResult struct {
	RunID          string   `json:"run_id"`
	DesignID       string   `json:"design_id"`
	State          string   `json:"state"`
	Success        bool     `json:"success"`
	Failure        string   `json:"failure,omitempty"`
	Reason         string   `json:"reason,omitempty"`
	File           string   `json:"file,omitempty"`
	Mirrors        []string `json:"mirrors,omitempty"`
	Pages          int      `json:"pages"`
	ImagesEmbedded int      `json:"images_embedded"`
}

type Error struct {
	Error string `json:"error"`
}
