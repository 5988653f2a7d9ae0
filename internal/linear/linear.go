// Package linear implements the linear classifier group the tree
// builder trains at every node: K independent L2-regularized binary
// linear models (squared-hinge or logistic loss) sharing one feature
// space, and the margin-to-log-probability score transform beam search
// needs for additive path scores.
//
// Each row's design matrix is restricted to the feature columns that
// are actually nonzero among that row's active examples, a small dense
// subspace solved with gonum's vector/matrix primitives rather than a
// dense NFeatures-wide solve.
package linear

import (
	"math"
	"sort"

	"github.com/parabel-ml/parabel/domain"
	"gonum.org/v1/gonum/mat"
)

const maxIterations = 200

// Group trains and evaluates classifier groups. It implements
// domain.ClassifierGroupTrainer.
type Group struct{}

// NewGroup returns the default gonum-backed classifier group trainer.
func NewGroup() *Group { return &Group{} }

// Train fits K independent linear models. targets[i][r] is example i's
// target for row r: +1, -1, or 0 ("example i does not participate in
// row r's training set").
func (Group) Train(examples []domain.Example, targets [][]int8, nFeatures int, params domain.LinearParams) (domain.WeightMatrix, error) {
	if len(examples) == 0 {
		return domain.WeightMatrix{}, domain.NewInvalidInputError("cannot train a classifier group on zero examples", nil)
	}
	k := 0
	if len(targets) > 0 {
		k = len(targets[0])
	}
	wm := domain.WeightMatrix{Rows: make([]domain.SparseVector, k)}
	for r := 0; r < k; r++ {
		row, err := trainRow(examples, targets, r, nFeatures, params)
		if err != nil {
			return domain.WeightMatrix{}, err
		}
		wm.Rows[r] = row
	}
	return wm, nil
}

// trainRow fits one row's weight vector with batch gradient descent over
// the local active-column subspace, then maps it back to global feature
// indices (plus the bias slot at nFeatures) and prunes small weights.
func trainRow(examples []domain.Example, targets [][]int8, row, nFeatures int, params domain.LinearParams) (domain.SparseVector, error) {
	activeIdx := make([]int, 0)
	for i := range examples {
		if targets[i][row] != 0 {
			activeIdx = append(activeIdx, i)
		}
	}
	if len(activeIdx) == 0 {
		return domain.SparseVector{}, nil
	}

	cols, colIndex := activeColumns(examples, activeIdx)
	d := len(cols) // local dim, bias is an implicit extra column at d

	x := mat.NewDense(len(activeIdx), d+1, nil)
	y := make([]float64, len(activeIdx))
	for row2, i := range activeIdx {
		for _, e := range examples[i].Features {
			if lc, ok := colIndex[e.Index]; ok {
				x.Set(row2, lc, float64(e.Value))
			}
		}
		x.Set(row2, d, 1) // bias column
		y[row2] = float64(targets[i][row])
	}

	w := mat.NewVecDense(d+1, nil)
	grad := mat.NewVecDense(d+1, nil)
	margin := mat.NewVecDense(len(activeIdx), nil)

	for iter := 0; iter < maxIterations; iter++ {
		margin.MulVec(x, w)
		computeGradient(grad, x, y, margin.RawVector().Data, w, params)
		gNorm := mat.Norm(grad, 2)
		if gNorm < params.Eps {
			break
		}
		step := 1.0 / (1.0 + float64(iter))
		w.AddScaledVec(w, -step, grad)
	}

	return weightsToSparse(w, cols, nFeatures, params.WeightThreshold), nil
}

// computeGradient writes the gradient of 0.5*||w||^2 + C*sum(loss_i)
// into grad.
func computeGradient(grad *mat.VecDense, x *mat.Dense, y, margin []float64, w *mat.VecDense, params domain.LinearParams) {
	n, d := x.Dims()
	grad.CopyVec(w)
	coeffs := make([]float64, n)
	switch params.LossType {
	case domain.LossHinge:
		for i := 0; i < n; i++ {
			m := y[i] * margin[i]
			if m < 1 {
				coeffs[i] = -2 * params.C * y[i] * (1 - m)
			}
		}
	default: // logistic
		for i := 0; i < n; i++ {
			coeffs[i] = -params.C * y[i] * sigmoid(-y[i]*margin[i])
		}
	}
	for j := 0; j < d; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += coeffs[i] * x.At(i, j)
		}
		grad.SetVec(j, grad.AtVec(j)+sum)
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

func activeColumns(examples []domain.Example, activeIdx []int) ([]domain.Index, map[domain.Index]int) {
	seen := make(map[domain.Index]struct{})
	for _, i := range activeIdx {
		for _, e := range examples[i].Features {
			seen[e.Index] = struct{}{}
		}
	}
	cols := make([]domain.Index, 0, len(seen))
	for idx := range seen {
		cols = append(cols, idx)
	}
	sort.Slice(cols, func(i, j int) bool { return cols[i] < cols[j] })
	colIndex := make(map[domain.Index]int, len(cols))
	for i, idx := range cols {
		colIndex[idx] = i
	}
	return cols, colIndex
}

func weightsToSparse(w *mat.VecDense, cols []domain.Index, nFeatures int, threshold float64) domain.SparseVector {
	out := make(domain.SparseVector, 0, len(cols)+1)
	for lc, idx := range cols {
		v := w.AtVec(lc)
		if math.Abs(v) >= threshold {
			out = append(out, domain.SparseEntry{Index: idx, Value: float32(v)})
		}
	}
	bias := w.AtVec(len(cols))
	if math.Abs(bias) >= threshold {
		out = append(out, domain.SparseEntry{Index: domain.Index(nFeatures), Value: float32(bias)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// Predict computes, for each row, the margin w_r . x and transforms it
// into a log-probability-like score via the numerically stable
// log-sigmoid. The transform is identical for both loss types: the
// margin is treated as a logit either way, which is what keeps path
// scores additive across a root-to-leaf traversal.
func (Group) Predict(x domain.DenseVector, wm domain.WeightMatrix, _ domain.LossType) []float32 {
	scores := make([]float32, len(wm.Rows))
	for r, row := range wm.Rows {
		var margin float64
		for _, e := range row {
			if int(e.Index) < len(x) {
				margin += float64(e.Value) * float64(x[e.Index])
			}
		}
		scores[r] = float32(logSigmoid(margin))
	}
	return scores
}

// logSigmoid returns log(1/(1+exp(-z))) using the numerically stable
// form that avoids overflow for large |z|.
func logSigmoid(z float64) float64 {
	if z >= 0 {
		return -math.Log1p(math.Exp(-z))
	}
	return z - math.Log1p(math.Exp(z))
}
