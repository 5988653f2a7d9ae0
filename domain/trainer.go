package domain

// ClassifierGroupTrainer is the external collaborator that fits a block
// of K independent linear classifiers sharing one feature space. The
// tree builder calls it once per node; it never looks inside a
// WeightMatrix itself beyond what Predict needs.
//
// targets[i] holds, for example i (an index into the examples slice
// passed alongside), the target label for each of the K rows: +1, -1,
// or 0 for "don't care" when example i is not part of row r's training
// subset. The tree builder itself only emits +1 and -1: at branches and
// leaves alike, every example in the node's subset trains every row.
type ClassifierGroupTrainer interface {
	Train(examples []Example, targets [][]int8, nFeatures int, params LinearParams) (WeightMatrix, error)
	Predict(x DenseVector, wm WeightMatrix, loss LossType) []float32
}
