package vulkan

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Package-level counters. Registration happens once on the default
// registry; devices in the same process share the series.
var (
	metricHeapBytesAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rhi",
		Subsystem: "vulkan",
		Name:      "heap_bytes_allocated_total",
		Help:      "Bytes of device memory allocated through CreateHeap.",
	})

	metricHeapBytesFreed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rhi",
		Subsystem: "vulkan",
		Name:      "heap_bytes_freed_total",
		Help:      "Bytes of device memory released by Heap.Free.",
	})

	metricHeapAllocFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rhi",
		Subsystem: "vulkan",
		Name:      "heap_allocation_failures_total",
		Help:      "Device memory allocations that failed.",
	})

	metricSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rhi",
		Subsystem: "vulkan",
		Name:      "queue_submissions_total",
		Help:      "Command list submissions per queue kind.",
	}, []string{"queue"})

	metricRetired = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rhi",
		Subsystem: "vulkan",
		Name:      "queue_retired_submissions_total",
		Help:      "Submissions observed complete during garbage collection, per queue kind.",
	}, []string{"queue"})
)
