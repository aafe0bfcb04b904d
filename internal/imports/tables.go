package imports

// aliases maps module names as imported to the distribution that provides
// them, for the cases where the two differ.
var aliases = map[string]string{
	"flask":         "Flask",
	"bs4":           "beautifulsoup4",
	"flask_cors":    "Flask-Cors",
	"flask_discord": "Flask-Discord",
	"pyqt":          "PyQt",
	"pyqt5":         "PyQt5",
	"yaml":          "PyYAML",
	"PIL":           "Pillow",
	"cv2":           "opencv-python",
	"sklearn":       "scikit-learn",
	"dateutil":      "python-dateutil",
	"dotenv":        "python-dotenv",
	"jwt":           "PyJWT",
	"attr":          "attrs",
	"serial":        "pyserial",
	"usb":           "pyusb",
	"OpenSSL":       "pyOpenSSL",
	"Crypto":        "pycryptodome",
	"magic":         "python-magic",
	"docx":          "python-docx",
	"git":           "GitPython",
}

// builtins is the set of standard library modules. Imports of these never
// appear in a generated manifest.
var builtins = toSet(
	"__future__", "__main__", "_thread", "abc", "aifc", "argparse", "array",
	"ast", "asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64",
	"bdb", "binascii", "binhex", "bisect", "builtins", "bz2", "calendar",
	"cgi", "cgitb", "chunk", "cmath", "cmd", "code", "codecs", "codeop",
	"colorsys", "compileall", "configparser", "contextlib", "contextvars",
	"copy", "copyreg", "cProfile", "csv", "ctypes", "dataclasses", "datetime",
	"decimal", "difflib", "dis", "doctest", "ensurepip", "enum", "errno",
	"faulthandler", "filecmp", "fileinput", "fnmatch", "fractions", "ftplib",
	"functools", "gc", "getopt", "getpass", "gettext", "glob", "graphlib",
	"gzip", "hashlib", "heapq", "hmac", "imaplib", "imghdr", "imp", "inspect",
	"io", "ipaddress", "itertools", "keyword", "lib2to3", "linecache",
	"locale", "lzma", "mailbox", "mailcap", "marshal", "math", "mimetypes",
	"mmap", "modulefinder", "netrc", "nntplib", "numbers", "operator",
	"optparse", "pathlib", "pdb", "pickle", "pickletools", "pkgutil",
	"platform", "plistlib", "poplib", "pprint", "profile", "pstats",
	"py_compile", "pyclbr", "pydoc", "queue", "quopri", "random", "re",
	"reprlib", "rlcompleter", "runpy", "sched", "secrets", "select",
	"selectors", "shelve", "shlex", "shutil", "signal", "site", "smtpd",
	"smtplib", "sndhdr", "socket", "socketserver", "sqlite3", "ssl", "stat",
	"statistics", "string", "stringprep", "struct", "subprocess", "sunau",
	"symtable", "sys", "sysconfig", "tabnanny", "tarfile", "telnetlib",
	"tempfile", "textwrap", "threading", "time", "timeit", "token",
	"tokenize", "trace", "traceback", "tracemalloc", "turtle", "turtledemo",
	"types", "typing", "unicodedata", "uu", "uuid", "venv", "warnings",
	"wave", "weakref", "webbrowser", "xdrlib", "zipapp", "zipfile",
	"zipimport", "zlib", "zoneinfo",

	// Packages and platform-specific modules.
	"collections", "concurrent", "curses", "dbm", "distutils", "email",
	"encodings", "html", "http", "idlelib", "importlib", "json", "logging",
	"msilib", "multiprocessing", "os", "pydoc_data", "test", "tkinter",
	"unittest", "urllib", "wsgiref", "xml", "xmlrpc", "ntpath", "posixpath",
	"posix", "nt", "msvcrt", "winreg", "winsound", "fcntl", "grp", "pwd",
	"resource", "termios", "tty", "pty", "readline", "syslog", "crypt",
	"nis", "spwd", "ossaudiodev", "pipes",
)

func toSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
