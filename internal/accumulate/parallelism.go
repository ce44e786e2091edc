package accumulate

// FallbackParallelism is used when the environment cannot tell how many
// execution units are available.
const FallbackParallelism = 2

// AvailableParallelism asks the environment how many execution units the
// calling process may run on. The answer is never cached, so a change of
// CPU affinity between calls is picked up.
func AvailableParallelism() int {
	return resolveParallelism(availableCPUs())
}

func resolveParallelism(reported int) int {
	if reported <= 0 {
		return FallbackParallelism
	}
	return reported
}
