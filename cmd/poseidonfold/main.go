// Command poseidonfold hashes field elements, prints step segmentations of the
// permutation and proves every segment of one permutation with groth16.
package main

func main() {
	Execute()
}
