//go:build !linux

package media

func keepOutputProcessing(int) error { return nil }
