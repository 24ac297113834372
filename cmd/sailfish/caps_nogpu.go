//go:build !gpu

package main

const capGPU = false
