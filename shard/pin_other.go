//go:build !linux

package shard

import "errors"

func pinToCPU(int) error {
	return errors.New("cpu pinning is only supported on linux")
}
