package constvars

const (
	RegexPhoneNumberGeneral = `^\+[1-9]\d{9,14}$`
)
