package a

import "os"

func Configure() {
	os.Setenv("APP_NAME", "allowed outside tests")
}
