//go:build tools
// +build tools

// Package main 記錄 go generate 使用的工具依賴 (mockgen)。
package main

import (
	_ "go.uber.org/mock/mockgen"
)
