//go:build !omp

package main

const capOMP = false
