package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type SbErr struct {
	msg  string
	code int64
	err  error
}

// Error renders as:
// [code] description ( => cause )
// the part in parentheses only appears when a cause is attached.
func (se *SbErr) Error() string {
	details := fmt.Sprintf("[%d] %s", se.code, se.msg)
	if se.err != nil {
		details += fmt.Sprintf(" => %s", se.err)
	}

	return details
}

func (se *SbErr) Code() int64 {
	return se.code
}

func (se *SbErr) Unwrap() error {
	return se.err
}

func (se *SbErr) WithErr(err error) *SbErr {
	se.err = err
	return se
}

// WithMsg appends detail to the description, keeping the code.
func (se *SbErr) WithMsg(format string, args ...any) *SbErr {
	se.msg = fmt.Sprintf("%s: %s", se.msg, fmt.Sprintf(format, args...))
	return se
}

func GetCode(err error) int64 {
	var se *SbErr
	if errors.As(err, &se) {
		return se.code
	}
	return UnknownErrCode
}

const (
	UnknownErrCode          = 0
	InvalidParamErrCode     = 100001
	OpenFileErrCode         = 100005
	DirNotExistErrCode      = 100006
	FileNoPermissionErrCode = 100007
	FileStatErrCode         = 100008
	MkdirErrCode            = 100009
	ReadFileErrCode         = 100010
	WriteFileErrCode        = 100011
	CloseFileErrCode        = 100013
	SeekFileErrCode         = 100019
	NotFoundErrCode         = 100021
	ParseIntErrCode         = 100028
	RemoveFileErrCode       = 100031
	ReadConfigErrCode       = 100038
	RecordOutOfRangeErrCode = 200001
	TruncatedRecordErrCode  = 200002
	AmbiguousNameErrCode    = 200003
	SchemaMismatchErrCode   = 200004
	CorruptIndexErrCode     = 200005
	CorruptHeaderErrCode    = 200006
	FieldNotFoundErrCode    = 200007
	FieldTypeErrCode        = 200008
	ExtractArchiveErrCode   = 200009
)

func NewUnknownErr() *SbErr {
	return &SbErr{msg: "unknown error", code: UnknownErrCode}
}

func NewInvalidParamErr() *SbErr {
	return &SbErr{msg: "invalid params", code: InvalidParamErrCode}
}

func NewOpenFileErr() *SbErr {
	return &SbErr{msg: "open file failed", code: OpenFileErrCode}
}

func NewDirNotExistErr() *SbErr {
	return &SbErr{msg: "directory not exist", code: DirNotExistErrCode}
}

func NewFileNoPermissionErr() *SbErr {
	return &SbErr{msg: "file no permission", code: FileNoPermissionErrCode}
}

func NewFileStatErr() *SbErr {
	return &SbErr{msg: "file stat failed", code: FileStatErrCode}
}

func NewMkdirErr() *SbErr {
	return &SbErr{msg: "mkdir failed", code: MkdirErrCode}
}

func NewReadFileErr() *SbErr {
	return &SbErr{msg: "read file failed", code: ReadFileErrCode}
}

func NewWriteFileErr() *SbErr {
	return &SbErr{msg: "write file failed", code: WriteFileErrCode}
}

func NewCloseFileErr() *SbErr {
	return &SbErr{msg: "close file failed", code: CloseFileErrCode}
}

func NewSeekFileErr() *SbErr {
	return &SbErr{msg: "seek file failed", code: SeekFileErrCode}
}

func NewNotFoundErr() *SbErr {
	return &SbErr{msg: "not found", code: NotFoundErrCode}
}

func NewParseIntErr() *SbErr {
	return &SbErr{msg: "strconv parse int failed", code: ParseIntErrCode}
}

func NewRemoveFileErr() *SbErr {
	return &SbErr{msg: "remove file failed", code: RemoveFileErrCode}
}

func NewReadConfigErr() *SbErr {
	return &SbErr{msg: "read config failed", code: ReadConfigErrCode}
}

func NewRecordOutOfRangeErr() *SbErr {
	return &SbErr{msg: "record number out of range", code: RecordOutOfRangeErrCode}
}

func NewTruncatedRecordErr() *SbErr {
	return &SbErr{msg: "record truncated", code: TruncatedRecordErrCode}
}

func NewAmbiguousNameErr() *SbErr {
	return &SbErr{msg: "name matches more than one body", code: AmbiguousNameErrCode}
}

func NewSchemaMismatchErr() *SbErr {
	return &SbErr{msg: "schema field types mismatch", code: SchemaMismatchErrCode}
}

func NewCorruptIndexErr() *SbErr {
	return &SbErr{msg: "name index content corrupt", code: CorruptIndexErrCode}
}

func NewCorruptHeaderErr() *SbErr {
	return &SbErr{msg: "file header content corrupt", code: CorruptHeaderErrCode}
}

func NewFieldNotFoundErr() *SbErr {
	return &SbErr{msg: "field not found", code: FieldNotFoundErrCode}
}

func NewFieldTypeErr() *SbErr {
	return &SbErr{msg: "field value has wrong type", code: FieldTypeErrCode}
}

func NewExtractArchiveErr() *SbErr {
	return &SbErr{msg: "extract archive failed", code: ExtractArchiveErrCode}
}
