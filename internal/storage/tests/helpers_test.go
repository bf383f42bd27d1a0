package tests

import "os"

func lookupEnv(key string) string {
	v, _ := os.LookupEnv(key)
	return v
}
