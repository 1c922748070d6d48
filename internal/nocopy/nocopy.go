package nocopy

// NoCopy 嵌入结构体后可被 `go vet` 的 copylocks 检查发现值拷贝。
//
// 详见 https://github.com/golang/go/issues/8005#issuecomment-190753527
type NoCopy struct{}

func (*NoCopy) Lock()   {}
func (*NoCopy) Unlock() {}
