package models

// Dataset is a complete set of rows to load. Comment article ids refer to
// articles by 1-based position, which matches the ids the sequence assigns
// after a truncate.
type Dataset struct {
	Topics   []*Topic
	Users    []*User
	Articles []*Article
	Comments []*Comment
}
