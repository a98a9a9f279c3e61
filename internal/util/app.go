package util

func GetAppName() string {
	return "certgen"
}
