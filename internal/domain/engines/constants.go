package engines

// CipherAESCBC represents AES in CBC mode
const CipherAESCBC = "aes-cbc"

// CipherDESCBC represents DES in CBC mode
const CipherDESCBC = "des-cbc"

// Cipher3DESCBC represents triple DES (EDE) in CBC mode
const Cipher3DESCBC = "3des-cbc"

// CipherBlowfishCBC represents Blowfish in CBC mode
const CipherBlowfishCBC = "blowfish-cbc"

// HashMD5 represents the MD5 digest
const HashMD5 = "md5"

// HashSHA1 represents the SHA-1 digest
const HashSHA1 = "sha1"

// HashSHA256 represents the SHA-256 digest
const HashSHA256 = "sha256"

// HashSHA384 represents the SHA-384 digest
const HashSHA384 = "sha384"

// HashSHA512 represents the SHA-512 digest
const HashSHA512 = "sha512"

// HashRIPEMD160 represents the RIPEMD-160 digest
const HashRIPEMD160 = "ripemd160"

// MaxCipherKeyLength is the upper bound for any cipher key in bytes
const MaxCipherKeyLength = 64

// MaxHMACKeyLength is the upper bound for any HMAC key in bytes
const MaxHMACKeyLength = 512
