package models

// KYCForm is the dynamic verification form configured by the platform.
type KYCForm struct {
	Fields []ManualField `json:"fields"`
}

// KYCFile is an uploaded document attached to a KYC submission.
type KYCFile struct {
	Field    string
	FileName string
	Content  []byte
}
